/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package notify

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/carverauto/ifwatch/pkg/logger"
)

// LogSink writes messages to the logger instead of a chat service. It is
// used when no chat provider is configured.
type LogSink struct {
	logger logger.Logger
	seq    atomic.Uint64
}

// NewLogSink creates a LogSink.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

var _ Sink = (*LogSink)(nil)

func (l *LogSink) Send(_ context.Context, destination, text string) (MessageHandle, error) {
	handle := MessageHandle(strconv.FormatUint(l.seq.Add(1), 10))

	l.logger.Info().
		Str("destination", destination).
		Str("handle", string(handle)).
		Msg(text)

	return handle, nil
}

func (l *LogSink) Delete(_ context.Context, destination string, handle MessageHandle) error {
	l.logger.Debug().
		Str("destination", destination).
		Str("handle", string(handle)).
		Msg("Message withdrawn")

	return nil
}
