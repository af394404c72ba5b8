package service

import "errors"

// Domain errors. Guard failures get their own sentinels so callers can
// tell "does not exist" from "exists but refused" when shaping responses.
var (
	ErrNotFound      = errors.New("not found")
	ErrNoSeats       = errors.New("no available seats")
	ErrTeamFull      = errors.New("team is at capacity")
	ErrCaptainLocked = errors.New("captain cannot leave a team with other members")
	ErrAlreadyMember = errors.New("user is already a team member")
)
