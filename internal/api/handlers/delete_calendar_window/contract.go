package delete_calendar_window

import "context"

type CalendarService interface {
	DeleteWindow(ctx context.Context, id int64, requesterID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
