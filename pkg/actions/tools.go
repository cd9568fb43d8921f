package actions

// Tool describes an action to a realtime assistant as a callable function.
type Tool struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type toolSpec struct {
	description string
	param       string
	paramDesc   string
}

var toolSpecs = [numKinds]toolSpec{
	MoveCar: {
		description: "Makes the car move in a specific direction",
		param:       "direction",
		paramDesc:   "The direction to move the car: up, down, left, or right",
	},
	StopCar: {
		description: "Stops the car from moving",
	},
	SetCarSpeed: {
		description: "Sets the speed of the car",
		param:       "speed",
		paramDesc:   "The speed value between 0 and 5",
	},
	CalculateMath: {
		description: "Calculates a simple math expression and shows result with fingers",
		param:       "expression",
		paramDesc:   `A simple math expression like "2 + 3"`,
	},
	ShowGesture: {
		description: "Shows specific fingers on hands. Can control individual fingers by name (thumb, index, middle, ring, pinky) and specify left or right hand.",
		param:       "gesture",
		paramDesc:   `Description of which fingers to raise, e.g., "left index and right thumb" or "show 7 fingers" or "raise left thumb and index"`,
	},
	ResetHands: {
		description: "Resets both hands to initial state with all fingers down",
	},
}

// Tool returns the function definition advertised for k.
func (k Kind) Tool() Tool {
	spec := toolSpecs[k]
	t := Tool{
		Type:        "function",
		Name:        k.String(),
		Description: spec.description,
	}
	if spec.param != "" {
		t.Parameters = map[string]any{
			"type": "object",
			"properties": map[string]any{
				spec.param: map[string]any{
					"type":        "string",
					"description": spec.paramDesc,
				},
			},
		}
	}
	return t
}

// Tools returns the function definitions of every action.
func Tools() []Tool {
	tools := make([]Tool, 0, numKinds)
	for _, k := range All() {
		tools = append(tools, k.Tool())
	}
	return tools
}
