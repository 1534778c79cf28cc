package models

// Actor identifies the user performing a mutation. Services take it as
// an explicit parameter instead of reading ambient auth state, so the
// core stays testable without a mocked session.
type Actor struct {
	UID  string
	Name string
}
