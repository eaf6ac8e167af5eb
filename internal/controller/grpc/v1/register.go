package grpcv1

import (
	"github.com/Egor213/LogiStat/internal/metrics"
	"github.com/Egor213/LogiStat/internal/service"
	"google.golang.org/grpc"
)

func RegisterServices(services *service.Services, counters *metrics.Counters) func(s *grpc.Server) {
	return func(s *grpc.Server) {
		RegisterStatsServiceServer(s, NewStatsController(services.Stats, counters))
	}
}
