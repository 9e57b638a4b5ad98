package notifier

import (
	"context"
	"fmt"
	"html"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"dutch_market/internal/domain/entity"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// AuctionEnded отправляет событие сразу, без очереди.
func (b *TelegramBot) AuctionEnded(ctx context.Context, event entity.AuctionEnded) error {
	return b.SendAuctionEnded(ctx, event)
}

func (b *TelegramBot) SendAuctionEnded(ctx context.Context, event entity.AuctionEnded) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		auctionEndedText(event),
	).WithParseMode(telego.ModeHTML)

	_, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}

func auctionEndedText(event entity.AuctionEnded) string {
	return fmt.Sprintf(
		"🔨 <b>SOLD</b>\n\n"+
			"🎁 <b>Item:</b> %s\n"+
			"#️⃣ <b>Auction:</b> %d\n"+
			"💰 <b>Final price:</b> %d\n"+
			"👤 <b>Buyer:</b> %s",
		html.EscapeString(event.Item),
		event.AuctionIndex,
		event.FinalPrice,
		html.EscapeString(event.Buyer.String()),
	)
}
