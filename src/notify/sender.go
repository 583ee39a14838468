package notify

// Sender is either the system or a concrete user. The system variant is
// stored as a null sender id, never as a sentinel string.
type Sender struct {
	userId *uint
}

func SystemSender() Sender {
	return Sender{}
}

func UserSender(id uint) Sender {
	return Sender{userId: &id}
}

func (s Sender) IsSystem() bool {
	return s.userId == nil
}

func (s Sender) UserID() *uint {
	return s.userId
}
