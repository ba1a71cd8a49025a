package handler

import (
	evaluationdomain "tenf-admin-go/internal/domain/evaluation"
	eventdomain "tenf-admin-go/internal/domain/event"
	memberdomain "tenf-admin-go/internal/domain/member"
	spotlightdomain "tenf-admin-go/internal/domain/spotlight"
	twitchdomain "tenf-admin-go/internal/domain/twitch"
	vipdomain "tenf-admin-go/internal/domain/vip"
	"tenf-admin-go/pkg/logger"
)

type Handlers struct {
	Members     *memberdomain.Service
	Events      *eventdomain.Service
	Spotlights  *spotlightdomain.Service
	Evaluations *evaluationdomain.Service
	Vips        *vipdomain.Service
	Twitch      *twitchdomain.Service
	log         logger.Logger
}

func New(
	members *memberdomain.Service,
	events *eventdomain.Service,
	spotlights *spotlightdomain.Service,
	evaluations *evaluationdomain.Service,
	vips *vipdomain.Service,
	twitch *twitchdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Members:     members,
		Events:      events,
		Spotlights:  spotlights,
		Evaluations: evaluations,
		Vips:        vips,
		Twitch:      twitch,
		log:         log,
	}
}
