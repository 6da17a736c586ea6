package notification

import (
	"errors"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// SendTelMsg pushes an operational message to the ops telegram group.
// Token and chat come from the environment so alerts work even before the
// full config layer is up.
func SendTelMsg(msg string) error {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	group := os.Getenv("TELEGRAM_BOT_MESSAGE_GROUP")
	if botToken == "" || group == "" {
		return errors.New("TELEGRAM_BOT_TOKEN or TELEGRAM_BOT_MESSAGE_GROUP is not set")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return err
	}

	chatID, err := strconv.ParseInt(group, 10, 64)
	if err != nil {
		return errors.New("TELEGRAM_BOT_MESSAGE_GROUP is not a valid chat id")
	}

	_, err = bot.Send(tgbotapi.NewMessage(chatID, msg))
	return err
}
