package cases

//errgo:errors
func alwaysFine(n int) (int, FineError) {
	return n, nil
}
