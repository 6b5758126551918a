package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAccepted   Status = "ACCEPTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// ===============================
// Transition table
// ===============================

// transitions é a fonte única de verdade do ciclo de vida:
// (status atual, status alvo) -> roles autorizadas.
// COMPLETED e CANCELLED são terminais (sem saídas).
var transitions = map[Status]map[Status][]Role{
	StatusPending: {
		StatusAccepted:  {RoleProvider, RoleAdmin},
		StatusCancelled: {RoleCustomer, RoleProvider, RoleAdmin},
	},
	StatusAccepted: {
		StatusInProgress: {RoleProvider, RoleAdmin},
		StatusCancelled:  {RoleCustomer, RoleProvider, RoleAdmin},
	},
	StatusInProgress: {
		StatusCompleted: {RoleProvider, RoleAdmin},
		StatusCancelled: {RoleProvider, RoleAdmin},
	},
}

func InitialStatus() Status {
	return StatusPending
}

// EdgeExists diz se a transição consta no grafo, para qualquer role.
func EdgeExists(from, to Status) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// RoleAllowed diz se a role pode executar uma transição que existe no grafo.
func RoleAllowed(from, to Status, role Role) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	roles, ok := targets[to]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedTargets lista os alvos válidos a partir de um status para uma role.
func AllowedTargets(from Status, role Role) []Status {
	var out []Status
	for to := range transitions[from] {
		if RoleAllowed(from, to, role) {
			out = append(out, to)
		}
	}
	return out
}

func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}
