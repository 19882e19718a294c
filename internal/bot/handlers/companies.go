package handlers

import (
	"strings"

	"jobly/internal/bot/utils"
	"jobly/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /companies [search=..] [min_employees=..] [max_employees=..]
func HandleCompanies(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		filter, err := ParseCompanyFilter(c.Message().Payload)
		if err != nil {
			return replyError(ctx, c, err)
		}
		return sendCompaniesPage(ctx, c, filter, 0, false)
	}
}

// HandleCompaniesPage serves the pagination buttons of a company listing.
func HandleCompaniesPage(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		page, values, err := parsePagePayload(c.Callback().Data)
		if err != nil {
			ctx.Logger.Warn("invalid companies page callback", zap.String("data", c.Callback().Data), zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid page"})
		}

		filter, err := companyFilterFromValues(values)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid page"})
		}

		if err := sendCompaniesPage(ctx, c, filter, page, true); err != nil {
			return err
		}
		return c.Respond()
	}
}

func sendCompaniesPage(ctx *Context, c tele.Context, filter models.CompanyFilter, page int, edit bool) error {
	qctx, cancel := ctx.queryContext()
	defer cancel()

	companies, err := ctx.Companies.List(qctx, filter)
	if err != nil {
		return replyError(ctx, c, err)
	}

	if len(companies) == 0 {
		if edit {
			return c.Edit(utils.FormatNoResultsMessage("companies"), tele.ModeMarkdownV2)
		}
		return c.Send(utils.FormatNoResultsMessage("companies"), tele.ModeMarkdownV2)
	}

	start, end, page, pages := pageBounds(len(companies), page)
	text := utils.FormatCompanyList(companies[start:end], len(companies), page, pages)

	encoded := filter.Encode()
	opts := []interface{}{tele.ModeMarkdownV2}
	if kb := utils.InlinePaginationKeyboard(page, pages, utils.CompaniesPageUnique, func(p int) string {
		return pagePayload(p, encoded)
	}); kb != nil {
		opts = append(opts, kb)
	}

	if edit {
		return c.Edit(text, opts...)
	}
	return c.Send(text, opts...)
}

// /company <handle>
func HandleCompany(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		handle := strings.TrimSpace(c.Message().Payload)
		if handle == "" || strings.ContainsAny(handle, " \t") {
			return c.Reply("Usage: /company <handle>")
		}

		qctx, cancel := ctx.queryContext()
		defer cancel()

		company, err := ctx.Companies.Get(qctx, handle)
		if err != nil {
			return replyError(ctx, c, err)
		}
		if company == nil {
			return c.Reply("🔍 No company with handle " + handle)
		}

		return c.Send(utils.FormatCompany(company), tele.ModeMarkdownV2)
	}
}
