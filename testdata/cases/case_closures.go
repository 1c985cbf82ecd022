package cases

import "github.com/aatifsyed/errgo"

//errgo:errors
func runJobs(jobs []func() error) (int, RunError) {
	validate := func(i int) error {
		if jobs[i] == nil {
			return errgo.New(NilJob{Index: errgo.Val[int](i)})
		}
		return nil
	}
	for i := range jobs {
		if err := validate(i); err != nil {
			return 0, err.(RunError)
		}
		if err := jobs[i](); err != nil {
			return 0, errgo.New(JobFailed{
				Index: errgo.Val[int](i),
				Cause: errgo.Val[error](err),
			})
		}
	}
	return len(jobs), nil
}
