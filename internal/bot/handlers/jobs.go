package handlers

import (
	"strconv"
	"strings"

	"jobly/internal/bot/utils"
	"jobly/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /jobs [search=..] [min_salary=..] [max_salary=..] [min_equity=..]
func HandleJobs(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		filter, err := ParseJobFilter(c.Message().Payload)
		if err != nil {
			return replyError(ctx, c, err)
		}
		return sendJobsPage(ctx, c, filter, 0, false)
	}
}

func HandleJobsPage(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		page, values, err := parsePagePayload(c.Callback().Data)
		if err != nil {
			ctx.Logger.Warn("invalid jobs page callback", zap.String("data", c.Callback().Data), zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid page"})
		}

		filter, err := jobFilterFromValues(values)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "❌ Invalid page"})
		}

		if err := sendJobsPage(ctx, c, filter, page, true); err != nil {
			return err
		}
		return c.Respond()
	}
}

func sendJobsPage(ctx *Context, c tele.Context, filter models.JobFilter, page int, edit bool) error {
	qctx, cancel := ctx.queryContext()
	defer cancel()

	jobs, err := ctx.Jobs.List(qctx, filter)
	if err != nil {
		return replyError(ctx, c, err)
	}

	if len(jobs) == 0 {
		if edit {
			return c.Edit(utils.FormatNoResultsMessage("jobs"), tele.ModeMarkdownV2)
		}
		return c.Send(utils.FormatNoResultsMessage("jobs"), tele.ModeMarkdownV2)
	}

	start, end, page, pages := pageBounds(len(jobs), page)
	text := utils.FormatJobList(jobs[start:end], len(jobs), page, pages)

	encoded := filter.Encode()
	opts := []interface{}{tele.ModeMarkdownV2}
	if kb := utils.InlinePaginationKeyboard(page, pages, utils.JobsPageUnique, func(p int) string {
		return pagePayload(p, encoded)
	}); kb != nil {
		opts = append(opts, kb)
	}

	if edit {
		return c.Edit(text, opts...)
	}
	return c.Send(text, opts...)
}

// /job <id>
func HandleJob(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		id, err := strconv.ParseInt(strings.TrimSpace(c.Message().Payload), 10, 64)
		if err != nil || id <= 0 {
			return c.Reply("Usage: /job <id>")
		}

		qctx, cancel := ctx.queryContext()
		defer cancel()

		job, err := ctx.Jobs.Get(qctx, id)
		if err != nil {
			return replyError(ctx, c, err)
		}
		if job == nil {
			return c.Reply("🔍 No job with id " + strconv.FormatInt(id, 10))
		}

		return c.Send(utils.FormatJob(job), tele.ModeMarkdownV2)
	}
}
