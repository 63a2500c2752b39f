package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/dto"
	"taskhub/internal/adapter/http/mapper"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
	"taskhub/pkg/apierrors"
)

type TeamHandler struct {
	teamService ports.TeamService
}

func NewTeamHandler(teamService ports.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), domain.CreateTeamInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		LeaderID:    req.LeaderID,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgTeamNotFound, apierrors.MsgFailSaveTeam)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTeamItem(team))
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	leaderID, ok := queryID(c, "leader_id", apierrors.MsgInvalidUserID)
	if !ok {
		return
	}

	var teams []*domain.Team
	var err error
	if leaderID != nil {
		teams, err = h.teamService.ListTeamsByLeader(c.Request.Context(), *leaderID)
	} else {
		teams, err = h.teamService.ListTeams(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, apierrors.MsgTeamNotFound, apierrors.MsgFailListTeams)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTeamItems(teams))
}

func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := paramID(c, "id", apierrors.MsgInvalidTeamID)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err, apierrors.MsgTeamNotFound, apierrors.MsgFailListTeams)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTeamItem(team))
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID, ok := paramID(c, "id", apierrors.MsgInvalidTeamID)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	member, err := h.teamService.AddMember(c.Request.Context(), teamID, req.UserID, domain.TeamRole(req.Role))
	if err != nil {
		respondError(c, err, apierrors.MsgTeamNotFound, apierrors.MsgFailSaveTeam)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToMemberItem(member))
}

// RemoveMember accepts new_leader_id as a query parameter, required when
// the leader is the member being removed.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, ok := paramID(c, "id", apierrors.MsgInvalidTeamID)
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId", apierrors.MsgInvalidUserID)
	if !ok {
		return
	}
	newLeaderID, ok := queryID(c, "new_leader_id", apierrors.MsgInvalidUserID)
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, userID, newLeaderID); err != nil {
		respondError(c, err, apierrors.MsgMemberNotFound, apierrors.MsgFailSaveTeam)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TeamHandler) ChangeLeader(c *gin.Context) {
	teamID, ok := paramID(c, "id", apierrors.MsgInvalidTeamID)
	if !ok {
		return
	}

	var req dto.ChangeLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	team, err := h.teamService.ChangeLeader(c.Request.Context(), teamID, req.NewLeaderID)
	if err != nil {
		respondError(c, err, apierrors.MsgTeamNotFound, apierrors.MsgFailSaveTeam)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTeamItem(team))
}

func (h *TeamHandler) ChangeMemberRole(c *gin.Context) {
	teamID, ok := paramID(c, "id", apierrors.MsgInvalidTeamID)
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId", apierrors.MsgInvalidUserID)
	if !ok {
		return
	}

	var req dto.ChangeMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return
	}

	team, err := h.teamService.ChangeMemberRole(c.Request.Context(), teamID, req.ActorUserID, userID, domain.TeamRole(req.Role))
	if err != nil {
		respondError(c, err, apierrors.MsgMemberNotFound, apierrors.MsgFailSaveTeam)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTeamItem(team))
}
