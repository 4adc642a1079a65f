package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation/circulation/features/command/registermember"
	"github.com/AntonStoeckl/library-circulation/circulation/features/query/memberprofile"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/auth"
)

const tokenTypeBearer = "bearer"

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	profile, err := s.createMember(c.Request.Context(), req.FullName, req.Email, req.Password, core.RoleMember.String())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userOut(profile.MemberInfo))
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	profile, err := s.services.MemberProfile.Handle(c.Request.Context(), memberprofile.BuildQueryByEmail(req.Email))
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		abortWithError(c, err)
		return
	}

	if err != nil || !profile.Active || !auth.CheckPassword(profile.PasswordHash, req.Password) {
		abortWithError(c, core.Unauthorized("invalid credentials"))
		return
	}

	token, err := s.tokens.Issue(profile.UserID, profile.Role, profile.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: tokenTypeBearer})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, userOut(currentMember(c).MemberInfo))
}

// createMember hashes the password, registers the member and reads the new profile back.
func (s *Server) createMember(
	ctx context.Context,
	fullName string,
	email string,
	password string,
	role string,
) (memberprofile.MemberProfile, error) {

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return memberprofile.MemberProfile{}, core.InvalidRequest("password: %s", err.Error())
	}

	userID := uuid.New()
	command := registermember.BuildCommand(userID, fullName, email, passwordHash, role, s.now())

	if _, err := s.services.RegisterMember.Handle(ctx, command); err != nil {
		return memberprofile.MemberProfile{}, err
	}

	return s.services.MemberProfile.Handle(ctx, memberprofile.BuildQuery(userID))
}
