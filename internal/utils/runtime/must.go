package runtime

// Must panics if err is non-nil. Only for startup wiring where a failure
// means the process cannot run at all.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
