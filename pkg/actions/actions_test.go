package actions

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse_RoundTrip(t *testing.T) {
	for _, k := range All() {
		got, err := Parse(k.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", k.String(), err)
		}
		if got != k {
			t.Errorf("Parse(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, name := range []string{"", "flyCar", "movecar", "MoveCar"} {
		if _, err := Parse(name); !errors.Is(err, ErrUnknownAction) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownAction", name, err)
		}
	}
}

func TestKind_StringOutOfRange(t *testing.T) {
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		raw     string
		want    Call
		wantErr bool
	}{
		{
			name:   "move",
			action: "moveCar",
			raw:    `{"direction":"Left"}`,
			want:   Call{Kind: MoveCar, Args: Args{Direction: "Left"}},
		},
		{
			name:   "speed as string",
			action: "setCarSpeed",
			raw:    `{"speed":"3"}`,
			want:   Call{Kind: SetCarSpeed, Args: Args{Speed: "3"}},
		},
		{
			name:   "speed as number",
			action: "setCarSpeed",
			raw:    `{"speed":2.5}`,
			want:   Call{Kind: SetCarSpeed, Args: Args{Speed: "2.5"}},
		},
		{
			name:   "no arguments",
			action: "stopCar",
			raw:    "",
			want:   Call{Kind: StopCar},
		},
		{
			name:   "null arguments",
			action: "resetHands",
			raw:    "null",
			want:   Call{Kind: ResetHands},
		},
		{
			name:   "extra fields ignored",
			action: "showGesture",
			raw:    `{"gesture":"both thumb","mood":"happy"}`,
			want:   Call{Kind: ShowGesture, Args: Args{Gesture: "both thumb"}},
		},
		{
			name:    "bad json",
			action:  "calculateMath",
			raw:     `{"expression":`,
			wantErr: true,
		},
		{
			name:    "speed as bool",
			action:  "setCarSpeed",
			raw:     `{"speed":true}`,
			wantErr: true,
		},
		{
			name:    "unknown action",
			action:  "honk",
			raw:     `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.action, []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResult(t *testing.T) {
	ok := Ok("speed", 2.0, "ignored")
	if !ok.Success() {
		t.Error("Ok() should be successful")
	}
	if ok["speed"] != 2.0 {
		t.Errorf("speed = %v", ok["speed"])
	}
	if _, present := ok["ignored"]; present {
		t.Error("dangling key should be dropped")
	}

	fail := Fail("Invalid expression")
	if fail.Success() {
		t.Error("Fail() should not be successful")
	}

	data, err := json.Marshal(fail)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"error":"Invalid expression","success":false}` {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestTools(t *testing.T) {
	tools := Tools()
	if len(tools) != int(numKinds) {
		t.Fatalf("len(Tools()) = %d, want %d", len(tools), numKinds)
	}

	params := map[string]string{
		"moveCar":       "direction",
		"setCarSpeed":   "speed",
		"calculateMath": "expression",
		"showGesture":   "gesture",
	}

	for _, tool := range tools {
		if tool.Type != "function" {
			t.Errorf("%s: type = %q", tool.Name, tool.Type)
		}
		if tool.Description == "" {
			t.Errorf("%s: missing description", tool.Name)
		}
		param, wantParams := params[tool.Name]
		if !wantParams {
			if tool.Parameters != nil {
				t.Errorf("%s: unexpected parameters", tool.Name)
			}
			continue
		}
		props, _ := tool.Parameters["properties"].(map[string]any)
		if _, ok := props[param]; !ok {
			t.Errorf("%s: missing %q property", tool.Name, param)
		}
	}
}
