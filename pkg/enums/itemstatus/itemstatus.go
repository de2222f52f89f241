package itemstatus

// Status is the kitchen progress of a basket item sent to the chef's queue.
type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

type Enum struct {
	Pending   Status
	Preparing Status
	Completed Status
}

var Statuses = Enum{
	Pending:   Status{Name: "pending"},
	Preparing: Status{Name: "preparing"},
	Completed: Status{Name: "completed"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.Preparing,
	Statuses.Completed,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}

func (s Status) rank() int {
	for i, v := range All {
		if v.Name == s.Name {
			return i
		}
	}
	return -1
}

// CanAdvanceTo reports whether a transition from s to next moves forward.
func (s Status) CanAdvanceTo(next Status) bool {
	from, to := s.rank(), next.rank()
	return from >= 0 && to > from
}
