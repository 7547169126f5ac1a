package events

import "github.com/lottolab/powerpick/internal/lottery"

// NoopEmitter is used when no NATS URL is configured.
type NoopEmitter struct{}

var _ Emitter = (*NoopEmitter)(nil)
var _ Emitter = (*NATSEmitter)(nil)

func NewNoop() *NoopEmitter { return &NoopEmitter{} }

func (*NoopEmitter) EmitDraw(lottery.Draw) error       { return nil }
func (*NoopEmitter) EmitJackpot(lottery.Jackpot) error { return nil }
func (*NoopEmitter) EmitError(error) error             { return nil }
func (*NoopEmitter) Close()                            {}
