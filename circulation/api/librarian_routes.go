package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/changerole"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/issuelibrarycard"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/removemember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/updatemember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/allborrows"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/memberprofile"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/members"
)

func (s *Server) listMembers(c *gin.Context) {
	list, err := s.services.Members.Handle(c.Request.Context(), members.BuildQuery())
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]UserOut, 0, len(list.Members))
	for _, m := range list.Members {
		out = append(out, userOut(m))
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) addMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	profile, err := s.createMember(c.Request.Context(), req.FullName, req.Email, req.Password, req.Role)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userOut(profile.MemberInfo))
}

func (s *Server) updateMember(c *gin.Context) {
	userID, ok := pathID(c, "user_id", "member")
	if !ok {
		return
	}

	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	command := updatemember.BuildCommand(userID, req.FullName, req.Active, s.now())
	if _, err := s.services.UpdateMember.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithMember(c, userID)
}

func (s *Server) removeMember(c *gin.Context) {
	userID, ok := pathID(c, "user_id", "member")
	if !ok {
		return
	}

	if _, err := s.services.RemoveMember.Handle(c.Request.Context(), removemember.BuildCommand(userID, s.now())); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "deleted"})
}

func (s *Server) changeRole(c *gin.Context) {
	userID, ok := pathID(c, "user_id", "member")
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	command := changerole.BuildCommand(userID, req.Role, s.now())
	if _, err := s.services.ChangeRole.Handle(c.Request.Context(), command); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithMember(c, userID)
}

// issueLibraryCard returns the member with the card, an existing card is left unchanged.
func (s *Server) issueLibraryCard(c *gin.Context) {
	userID, ok := pathID(c, "user_id", "member")
	if !ok {
		return
	}

	if _, err := s.services.IssueLibraryCard.Handle(c.Request.Context(), issuelibrarycard.BuildCommand(userID, s.now())); err != nil {
		abortWithError(c, err)
		return
	}

	s.respondWithMember(c, userID)
}

func (s *Server) allBorrows(c *gin.Context) {
	borrows, err := s.services.AllBorrows.Handle(c.Request.Context(), allborrows.BuildQuery())
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]BorrowRecordOut, 0, len(borrows.Borrows))
	for _, r := range borrows.Borrows {
		out = append(out, borrowRecordOut(r))
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) respondWithMember(c *gin.Context, userID uuid.UUID) {
	profile, err := s.services.MemberProfile.Handle(c.Request.Context(), memberprofile.BuildQuery(userID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userOut(profile.MemberInfo))
}
