package renderer

// Unwind collects cleanups while a multi-step setup runs. If setup fails
// part way, Unwind runs them newest first; on success Discard drops them
// so the resources outlive the setup function.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

func (u *Unwind) Discard() {
	*u = nil
}
