package rut

// SelfTestCase is one row of the diagnostic table run at startup.
type SelfTestCase struct {
	Input  string
	Valid  bool
	Reason Reason
}

// SelfTestCases covers repetitive bodies whose arithmetic would pass
// (111111111, 999999999) next to known-good values. 87654321K is a common
// mistyping of 8765432K; its body computes check digit 4.
var SelfTestCases = []SelfTestCase{
	{Input: "111111111", Valid: false, Reason: ReasonRepetitiveBody},
	{Input: "222222222", Valid: false, Reason: ReasonRepetitiveBody},
	{Input: "444444444", Valid: false, Reason: ReasonRepetitiveBody},
	{Input: "123456785", Valid: true, Reason: ReasonValid},
	{Input: "999999999", Valid: false, Reason: ReasonRepetitiveBody},
	{Input: "8765432K", Valid: true, Reason: ReasonValid},
	{Input: "87654321K", Valid: false, Reason: ReasonCheckDigitMismatch},
}

// SelfTestOutcome pairs a case with what Validate actually returned.
type SelfTestOutcome struct {
	Case SelfTestCase
	Got  Result
}

// Passed reports whether the verdict matched the expectation.
func (o SelfTestOutcome) Passed() bool {
	return o.Got.Valid == o.Case.Valid && o.Got.Reason == o.Case.Reason
}

// RunSelfTest validates every entry of SelfTestCases.
func RunSelfTest() []SelfTestOutcome {
	out := make([]SelfTestOutcome, 0, len(SelfTestCases))
	for _, tc := range SelfTestCases {
		out = append(out, SelfTestOutcome{Case: tc, Got: Validate(tc.Input)})
	}
	return out
}
