package models

type SIRState struct {
	S, I, R int64
}

func (x SIRState) Labels() []string  { return []string{"S", "I", "R"} }
func (x SIRState) Counts() []int64   { return []int64{x.S, x.I, x.R} }
func (x SIRState) Population() int64 { return x.S + x.I + x.R }
func (x SIRState) Infectious() int64 { return x.I }

type SIRDState struct {
	S, I, R, D int64
}

func (x SIRDState) Labels() []string  { return []string{"S", "I", "R", "D"} }
func (x SIRDState) Counts() []int64   { return []int64{x.S, x.I, x.R, x.D} }
func (x SIRDState) Population() int64 { return x.S + x.I + x.R + x.D }
func (x SIRDState) Infectious() int64 { return x.I }
func (x SIRDState) living() int64     { return x.S + x.I + x.R }

type SEIRState struct {
	S, E, I, R int64
}

func (x SEIRState) Labels() []string  { return []string{"S", "E", "I", "R"} }
func (x SEIRState) Counts() []int64   { return []int64{x.S, x.E, x.I, x.R} }
func (x SEIRState) Population() int64 { return x.S + x.E + x.I + x.R }
func (x SEIRState) Infectious() int64 { return x.E + x.I }

type CoronaState struct {
	S, E, I, R, D int64
}

func (x CoronaState) Labels() []string  { return []string{"S", "E", "I", "R", "D"} }
func (x CoronaState) Counts() []int64   { return []int64{x.S, x.E, x.I, x.R, x.D} }
func (x CoronaState) Population() int64 { return x.S + x.E + x.I + x.R + x.D }
func (x CoronaState) Infectious() int64 { return x.E + x.I }
func (x CoronaState) living() int64     { return x.S + x.E + x.I + x.R }

// EbolaState carries C, the cumulative number of cases. C is a counter and
// is not part of the population.
type EbolaState struct {
	S, E, I, R, D int64
	C             int64
}

func (x EbolaState) Labels() []string  { return []string{"S", "E", "I", "R", "D", "C"} }
func (x EbolaState) Counts() []int64   { return []int64{x.S, x.E, x.I, x.R, x.D, x.C} }
func (x EbolaState) Population() int64 { return x.S + x.E + x.I + x.R + x.D }
func (x EbolaState) Infectious() int64 { return x.E + x.I }
func (x EbolaState) living() int64     { return x.S + x.E + x.I + x.R }

// PlagueState carries C, the cumulative number of cases.
type PlagueState struct {
	S, E, I, R, D int64
	C             int64
}

func (x PlagueState) Labels() []string  { return []string{"S", "E", "I", "R", "D", "C"} }
func (x PlagueState) Counts() []int64   { return []int64{x.S, x.E, x.I, x.R, x.D, x.C} }
func (x PlagueState) Population() int64 { return x.S + x.E + x.I + x.R + x.D }
func (x PlagueState) Infectious() int64 { return x.E + x.I }
func (x PlagueState) living() int64     { return x.S + x.E + x.I + x.R }
