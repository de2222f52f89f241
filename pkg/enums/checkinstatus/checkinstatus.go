package checkinstatus

const (
	Requested = "REQUESTED"
	Accepted  = "ACCEPTED"
	Declined  = "DECLINED"
	// Pending is written by older clients and is treated as Requested.
	Pending = "PENDING"
)

// Cancellable lists the statuses a customer may still withdraw.
var Cancellable = []string{Pending, Requested}

// Active lists the statuses that hold a seat request open.
var Active = []string{Pending, Requested, Accepted}

func IsCancellable(status string) bool {
	for _, s := range Cancellable {
		if s == status {
			return true
		}
	}
	return false
}
