package apierrors

const (
	MsgInvalidPayload     = "invalidPayload"
	MsgInvalidProjectID   = "invalidProjectID"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTeamID      = "invalidTeamID"
	MsgInvalidUserID      = "invalidUserID"
	MsgInvariantViolation = "invariantViolation"
	MsgProjectNotFound    = "projectNotFound"
	MsgTaskNotFound       = "taskNotFound"
	MsgTeamNotFound       = "teamNotFound"
	MsgMemberNotFound     = "memberNotFound"
	MsgForbidden          = "forbidden"
	MsgConcurrency        = "concurrencyConflict"
	MsgConflict           = "conflict"
	MsgFailListProjects   = "failListProjects"
	MsgFailSaveProject    = "failSaveProject"
	MsgFailListTasks      = "failListTasks"
	MsgFailSaveTask       = "failSaveTask"
	MsgFailListTeams      = "failListTeams"
	MsgFailSaveTeam       = "failSaveTeam"
)
