package session

type State string

const (
	Menu         State = "MENU"
	AddName      State = "ADD_NAME"
	AddDate      State = "ADD_DATE"
	AddAmount    State = "ADD_AMOUNT"
	ReportStart  State = "REPORT_START"
	ReportEnd    State = "REPORT_END"
	DeleteSelect State = "DELETE_SELECT"
	EditSelect   State = "EDIT_SELECT"
	EditName     State = "EDIT_NAME"
	EditAmount   State = "EDIT_AMOUNT"
)

// Session is the conversation state of one user. Scratch holds the answers collected by the
// current flow and is emptied whenever the user is back in the menu.
type Session struct {
	State   State             `json:"state"`
	Scratch map[string]string `json:"scratch,omitempty"`
}

func New() Session {
	return Session{State: Menu, Scratch: make(map[string]string)}
}

func (s *Session) Reset() {
	s.State = Menu
	s.Scratch = make(map[string]string)
}

// Set records a scratch value, creating the map for sessions decoded without one.
func (s *Session) Set(key, value string) {
	if s.Scratch == nil {
		s.Scratch = make(map[string]string)
	}
	s.Scratch[key] = value
}

func (s Session) Get(key string) (string, bool) {
	v, ok := s.Scratch[key]
	return v, ok
}

func (s Session) Clone() Session {
	scratch := make(map[string]string, len(s.Scratch))
	for k, v := range s.Scratch {
		scratch[k] = v
	}
	return Session{State: s.State, Scratch: scratch}
}
