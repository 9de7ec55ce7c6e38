package service

import (
	"context"

	"oak-village-be/internal/constant"
	"oak-village-be/internal/dto"
	"oak-village-be/internal/pkg/logger"
	"oak-village-be/pkg/gateway"
)

type IChapelService interface {
	Release(ctx context.Context, confession string) (*dto.ConfessResponse, error)
}

type chapelService struct {
	gatewayFactory gateway.Factory
	log            logger.ILogger
}

func NewChapelService(gatewayFactory gateway.Factory, log logger.ILogger) IChapelService {
	return &chapelService{
		gatewayFactory: gatewayFactory,
		log:            log,
	}
}

// Release forwards a confession and always returns a reflection; a Gateway
// failure degrades to the scattered-smoke line instead of an error.
func (s *chapelService) Release(ctx context.Context, confession string) (*dto.ConfessResponse, error) {
	gw := s.gatewayFactory.New()

	reflection, err := gw.ListenToConfession(ctx, confession)
	if err != nil {
		s.log.Error("chapel", "confession failed", map[string]interface{}{"error": err.Error()})
		reflection = constant.MsgConfessionWindScatter
	}

	return &dto.ConfessResponse{Reflection: reflection}, nil
}
