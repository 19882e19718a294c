package handlers

import (
	"jobly/internal/bot/utils"
	"jobly/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleText routes the main menu buttons. Anything else gets a hint.
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		switch c.Text() {
		case utils.BtnCompanies:
			return sendCompaniesPage(ctx, c, models.CompanyFilter{}, 0, false)
		case utils.BtnJobs:
			return sendJobsPage(ctx, c, models.JobFilter{}, 0, false)
		case utils.BtnHelp:
			return HandleHelp(ctx)(c)
		default:
			return c.Send("Use the menu below or /help", utils.MainMenuKeyboard())
		}
	}
}

// HandleCallback answers buttons that have no endpoint of their own, such as
// the page counter or buttons left over from an older release.
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		if cb := c.Callback(); cb != nil {
			ctx.Logger.Debug("unhandled callback",
				zap.String("unique", cb.Unique),
				zap.String("data", cb.Data),
			)
		}
		return c.Respond()
	}
}
