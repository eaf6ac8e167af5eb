package grpcv1

import (
	"context"

	"github.com/Egor213/LogiStat/internal/metrics"
	"github.com/Egor213/LogiStat/internal/service"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type StatsController struct {
	statsService service.Stats
	counters     *metrics.Counters
}

func NewStatsController(s service.Stats, cnt *metrics.Counters) *StatsController {
	return &StatsController{
		statsService: s,
		counters:     cnt,
	}
}

func (c *StatsController) ParseLog(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	c.counters.GrpcRequests.Inc("ParseLog", "received")

	text := req.GetValue()
	log.WithField("bytes", len(text)).Debug("Received ParseLog request")

	stats := c.statsService.Parse(text)

	resp, err := NewStructFromStats(stats)
	if err != nil {
		c.counters.GrpcRequests.Inc("ParseLog", "failed")
		log.Errorf("Failed to encode statistics: %v", err)
		return nil, status.Errorf(codes.Internal, "cannot encode statistics")
	}

	c.counters.GrpcRequests.Inc("ParseLog", "ok")

	return resp, nil
}
