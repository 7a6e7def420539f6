package gachalog

import "wish-archive/feature/gachalog/models"

// ProgressSink receives a snapshot of the refresh state after every page.
// Sinks must not block; a nil sink discards snapshots.
type ProgressSink func(models.FetchState)

// ChannelSink forwards snapshots to ch, dropping them when ch is full.
func ChannelSink(ch chan<- models.FetchState) ProgressSink {
	return func(state models.FetchState) {
		select {
		case ch <- state:
		default:
		}
	}
}

func (s ProgressSink) emit(state models.FetchState) {
	if s == nil {
		return
	}
	s(state.Clone())
}
