package auction

func (s *AuctionService) LockCount() int {
	return s.locks.len()
}
