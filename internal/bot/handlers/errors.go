package handlers

import (
	"errors"

	"jobly/internal/bot/utils"
	"jobly/internal/query"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const msgInternalError = "😔 Something went wrong. Please try again later."

// replyError answers with a message the user can act on. Bad arguments and
// inverted ranges are shown as is; anything else is logged and hidden.
func replyError(ctx *Context, c tele.Context, err error) error {
	var argErr *ArgError
	var filterErr *query.InvalidFilterError

	switch {
	case errors.As(err, &argErr):
		return c.Reply("⚠️ "+utils.EscapeMarkdown(argErr.Error())+"\n\nSee /help", tele.ModeMarkdownV2)
	case errors.As(err, &filterErr):
		return c.Reply("⚠️ "+utils.EscapeMarkdown(filterErr.Error()), tele.ModeMarkdownV2)
	default:
		ctx.Logger.Error("request failed",
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		return c.Reply(msgInternalError)
	}
}
