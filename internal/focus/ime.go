package focus

import "github.com/atomicstack/focustree/internal/widget"

// IMEService is the platform input-method boundary. The store only tells it
// when a session starts and ends; composing text is the service's business.
type IMEService interface {
	BeginIMESession(id widget.ID)
	EndIMESession()
}

type nopIME struct{}

func (nopIME) BeginIMESession(widget.ID) {}
func (nopIME) EndIMESession()            {}
