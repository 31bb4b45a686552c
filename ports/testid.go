package ports

// TestID identifies one of the supported heteroscedasticity tests.
// The set is closed: the trial engine dispatches over exactly these four
// variants and treats everything else as an error.
type TestID string

const (
	TestBreuschPagan    TestID = "breusch_pagan"
	TestWhite           TestID = "white"
	TestGoldfeldQuandt  TestID = "goldfeld_quandt"
	TestDetteMunkWagner TestID = "dette_munk_wagner"
)

// AllTests returns the closed set of supported test identifiers
func AllTests() []TestID {
	return []TestID{
		TestBreuschPagan,
		TestWhite,
		TestGoldfeldQuandt,
		TestDetteMunkWagner,
	}
}

// Valid reports whether the identifier names a supported test
func (t TestID) Valid() bool {
	switch t {
	case TestBreuschPagan, TestWhite, TestGoldfeldQuandt, TestDetteMunkWagner:
		return true
	}
	return false
}

func (t TestID) String() string {
	return string(t)
}
