package experiment

// Register every solver so that typed solver configs can be decoded
import (
	_ "github.com/samuelfneumann/gridlearn/agent/tabular/policyiteration"
	_ "github.com/samuelfneumann/gridlearn/agent/tabular/qlearning"
	_ "github.com/samuelfneumann/gridlearn/agent/tabular/sarsa"
	_ "github.com/samuelfneumann/gridlearn/agent/tabular/td"
	_ "github.com/samuelfneumann/gridlearn/agent/tabular/valueiteration"
)
