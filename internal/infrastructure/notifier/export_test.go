package notifier

var AuctionEndedText = auctionEndedText
