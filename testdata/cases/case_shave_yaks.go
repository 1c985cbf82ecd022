package cases

import "github.com/aatifsyed/errgo"

//errgo:errors
func shaveYaks(numYaks, emptyBuckets, numRazors int) (int, ShaveYaksError) {
	if numRazors == 0 {
		return 0, errgo.New(NotEnoughRazors)
	}
	if numYaks > emptyBuckets {
		return 0, errgo.New(NotEnoughBuckets{
			Got:      errgo.Val[int](emptyBuckets),
			Required: errgo.Val[int](numYaks),
		})
	}
	return numYaks, nil
}
