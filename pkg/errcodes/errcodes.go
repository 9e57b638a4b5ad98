package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Unauthorized        failure.ErrorCode = "Unauthorized"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidAccountID    failure.ErrorCode = "InvalidAccountID"
	InvalidAuctionIndex failure.ErrorCode = "InvalidAuctionIndex"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Аукционный движок
	InvalidAuctionParameters failure.ErrorCode = "InvalidAuctionParameters" // Некорректные параметры при создании
	AuctionNotFound          failure.ErrorCode = "AuctionNotFound"          // Индекс не существует
	AuctionStopped           failure.ErrorCode = "AuctionStopped"           // Аукцион уже закрыт
	InsufficientPayment      failure.ErrorCode = "InsufficientPayment"      // Оплата меньше текущей цены
	InvalidClock             failure.ErrorCode = "InvalidClock"             // now < startedAt
	ArithmeticOverflow       failure.ErrorCode = "ArithmeticOverflow"       // Переполнение при расчёте цены
	InvalidFeePercent        failure.ErrorCode = "InvalidFeePercent"        // Комиссия вне диапазона 0..100
	SettlementConflict       failure.ErrorCode = "SettlementConflict"       // Повторное проведение расчёта
)
