package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

// Event bus topics. Publishers pass (actor, detail).
const (
	EvtUserRegister  = "user.register"
	EvtUserLogin     = "user.login"
	EvtAdminMutation = "admin.mutation"
	EvtOrderDelete   = "order.delete"
)

func (a *Application) initEventSubscribers() {
	for _, topic := range []string{EvtUserRegister, EvtUserLogin, EvtAdminMutation, EvtOrderDelete} {
		topic := topic
		if err := a.bus.SubscribeAsync(topic, func(actor, detail string) {
			a.writeAuditLog(topic, actor, detail)
		}, false); err != nil {
			zap.L().Error("failed to subscribe audit handler", zap.String("topic", topic), zap.Error(err))
		}
	}
}

func (a *Application) writeAuditLog(action, actor, detail string) {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	if err := a.gormDB.Create(&domain.AuditLog{
		ID:      common.UUIDint64(),
		Actor:   actor,
		Action:  action,
		Detail:  detail,
		ActTime: time.Now(),
	}).Error; err != nil {
		zap.L().Error("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
