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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlackTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *slack.Client {
	t.Helper()

	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return slack.New("xoxb-test", slack.OptionAPIURL(srv.URL+"/"))
}

func TestSlackSinkSendAndDelete(t *testing.T) {
	var posted, deleted string

	api := newSlackTestServer(t, map[string]http.HandlerFunc{
		"/chat.postMessage": func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			posted = r.FormValue("channel") + ":" + r.FormValue("text")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
		},
		"/chat.delete": func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			deleted = r.FormValue("channel") + ":" + r.FormValue("ts")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
		},
	})

	sink := NewSlackSink(api, logger.NewTestLogger())

	handle, err := sink.Send(context.Background(), "C1", "Interface Gi0/1 went DOWN")
	require.NoError(t, err)
	assert.Equal(t, MessageHandle("1700000000.000100"), handle)
	assert.Equal(t, "C1:Interface Gi0/1 went DOWN", posted)

	require.NoError(t, sink.Delete(context.Background(), "C1", handle))
	assert.Equal(t, "C1:1700000000.000100", deleted)
}

func TestSlackSinkErrors(t *testing.T) {
	api := newSlackTestServer(t, map[string]http.HandlerFunc{
		"/chat.postMessage": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
		},
		"/chat.delete": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":false,"error":"message_not_found"}`))
		},
	})

	sink := NewSlackSink(api, logger.NewTestLogger())

	_, err := sink.Send(context.Background(), "C404", "hello")
	require.ErrorIs(t, err, ErrSendFailed)
	assert.Contains(t, err.Error(), "channel_not_found")

	err = sink.Delete(context.Background(), "C1", "1.2")
	require.ErrorIs(t, err, ErrDeleteFailed)
}
