/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
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

package banner

import (
	"bytes"
	"strings"
	"testing"

	"memdb/internal/config"
)

func TestPrintToPlain(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.ConfigFile = "/tmp/memdb.conf"

	PrintTo(&buf, cfg, false)
	out := buf.String()

	if strings.Contains(out, "\033[") {
		t.Errorf("expected no escape codes without color: %q", out)
	}
	for _, want := range []string{"v" + Version, "format=table", "config=/tmp/memdb.conf", `\q`} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q:\n%s", want, out)
		}
	}
}

func TestPrintToColor(t *testing.T) {
	var buf bytes.Buffer
	PrintTo(&buf, config.DefaultConfig(), true)
	if !strings.Contains(buf.String(), AnsiReset) {
		t.Error("expected escape codes with color enabled")
	}
}
