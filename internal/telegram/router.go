package telegram

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"keyword_pin_bot/internal/domain"
	"keyword_pin_bot/internal/feature/botadmin"
	"keyword_pin_bot/internal/feature/keyword"
	"keyword_pin_bot/internal/feature/pin"
	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/platform"
)

// Command names understood by the bot.
const (
	CommandStart       = "start"
	CommandAdmin       = "admin"
	CommandSetKeyword  = "setkeyword"
	CommandBroadcast   = "broadcast"
	CommandAddAdmin    = "addadmin"
	CommandRemoveAdmin = "removeadmin"
	CommandListAdmins  = "listadmins"
)

// CommandHandler handles one command. Returned errors are platform failures
// while replying; they are logged and never escape the event.
type CommandHandler func(ctx context.Context, api platform.Client, cmd domain.Command) error

// route pairs a handler with the tier it documents. The router logs the tier
// but never enforces it; each handler checks its own caller.
type route struct {
	tier   domain.Tier
	handle CommandHandler
}

// Router maps commands to handlers and sends callbacks and plain text to the
// keyword and pin features.
type Router struct {
	routes   map[string]route
	keywords *keyword.Service
	pins     *pin.Service
	logger   *logrus.Entry
}

// NewRouter builds the dispatch table for every command.
func NewRouter(keywords *keyword.Service, pins *pin.Service, botAdmins *botadmin.Service, logger *logrus.Entry) *Router {
	if logger == nil {
		logger = logging.Logger()
	}

	r := &Router{
		routes:   make(map[string]route),
		keywords: keywords,
		pins:     pins,
		logger:   logger,
	}

	r.Handle(CommandStart, domain.TierNone, startHandler)

	if keywords != nil {
		r.Handle(CommandAdmin, domain.TierGroupAdmin, func(ctx context.Context, api platform.Client, cmd domain.Command) error {
			return keywords.AdminPanel(ctx, api, cmd)
		})
		r.Handle(CommandSetKeyword, domain.TierGroupAdmin, func(ctx context.Context, api platform.Client, cmd domain.Command) error {
			return keywords.SetKeyword(ctx, api, cmd)
		})
	}

	if botAdmins != nil {
		r.Handle(CommandBroadcast, domain.TierBotAdmin, func(ctx context.Context, api platform.Client, cmd domain.Command) error {
			_, err := botAdmins.Broadcast(ctx, api, cmd)
			return err
		})
		r.Handle(CommandAddAdmin, domain.TierBotAdmin, func(ctx context.Context, api platform.Client, cmd domain.Command) error {
			return botAdmins.AddAdmin(ctx, api, cmd)
		})
		r.Handle(CommandRemoveAdmin, domain.TierBotAdmin, func(ctx context.Context, api platform.Client, cmd domain.Command) error {
			return botAdmins.RemoveAdmin(ctx, api, cmd)
		})
		r.Handle(CommandListAdmins, domain.TierBotAdmin, func(ctx context.Context, api platform.Client, cmd domain.Command) error {
			return botAdmins.ListAdmins(ctx, api, cmd)
		})
	}

	return r
}

// Handle registers or replaces the handler for a command name. tier is only a
// log label: the handler must authorize the caller itself.
func (r *Router) Handle(name string, tier domain.Tier, handler CommandHandler) {
	r.routes[name] = route{tier: tier, handle: handler}
}

// Commands returns the registered command names in sorted order.
func (r *Router) Commands() []string {
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch handles a single event to completion.
func (r *Router) Dispatch(ctx context.Context, api platform.Client, event domain.Event) {
	switch ev := event.(type) {
	case domain.Command:
		r.dispatchCommand(ctx, api, ev)
	case domain.CallbackAction:
		r.dispatchCallback(ctx, api, ev)
	case domain.TextMessage:
		r.dispatchText(ctx, api, ev)
	}
}

func (r *Router) dispatchCommand(ctx context.Context, api platform.Client, cmd domain.Command) {
	logger := logging.Enrich(r.logger, logging.Context{
		ChatID:  cmd.ChatID,
		UserID:  cmd.UserID,
		Command: cmd.Name,
	})

	rt, ok := r.routes[cmd.Name]
	if !ok {
		logger.WithField("event", "command_ignored").Debug("ignored unknown command")
		return
	}

	logger.WithFields(logging.Fields{
		"event": "command_received",
		"tier":  rt.tier,
		"args":  len(cmd.Args),
	}).Info("handling command")

	if err := rt.handle(ctx, api, cmd); err != nil {
		logger.WithField("event", "command_failed").WithError(err).Warn("command handler failed")
	}
}

func (r *Router) dispatchCallback(ctx context.Context, api platform.Client, action domain.CallbackAction) {
	if r.keywords == nil {
		return
	}

	if err := r.keywords.HandleCallback(ctx, api, action); err != nil {
		logging.Enrich(r.logger, logging.Context{
			ChatID: action.ChatID,
			UserID: action.UserID,
			Event:  "callback_failed",
		}).WithError(err).Warn("callback handler failed")
	}
}

func (r *Router) dispatchText(ctx context.Context, api platform.Client, msg domain.TextMessage) {
	if r.pins == nil {
		return
	}

	outcome, err := r.pins.HandleMessage(ctx, api, msg)
	logger := logging.Enrich(r.logger, logging.Context{ChatID: msg.ChatID, UserID: msg.UserID})
	if err != nil {
		logger.WithField("event", "pin_handler_failed").WithError(err).Warn("pin handler failed")
		return
	}

	logger.WithFields(logging.Fields{
		"event":   "message_handled",
		"outcome": outcome,
	}).Debug("message handled")
}

func startHandler(ctx context.Context, api platform.Client, cmd domain.Command) error {
	return api.SendMessage(ctx, cmd.ChatID, domain.TextWelcome, nil)
}
