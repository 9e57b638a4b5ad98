package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	AuctionServer
	LedgerServer
}

func NewServer(
	auctionServer AuctionServer,
	ledgerServer LedgerServer,
) Server {
	return Server{
		AuctionServer: auctionServer,
		LedgerServer:  ledgerServer,
	}
}
