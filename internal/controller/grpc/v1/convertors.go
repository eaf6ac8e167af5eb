package grpcv1

import (
	"encoding/json"

	"github.com/Egor213/LogiStat/internal/domain"
	"google.golang.org/protobuf/types/known/structpb"
)

// NewStructFromStats goes through the JSON encoding so the struct carries
// the same field names and nulls as the HTTP response.
func NewStructFromStats(stats *domain.Stats) (*structpb.Struct, error) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	return structpb.NewStruct(fields)
}
