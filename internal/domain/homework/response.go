// internal/domain/homework/response.go
package homework

// JSON keys of the homework_statuses payload.
const (
	KeyHomeworks    = "homeworks"
	KeyCurrentDate  = "current_date"
	KeyHomeworkName = "homework_name"
	KeyStatus       = "status"
)

// Response is a validated homework_statuses payload.
// Homeworks keeps the raw items in server order; each item is checked only when it is translated.
type Response struct {
	Homeworks   []any
	CurrentDate int64
}
