package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
	"github.com/raids-lab/taskflow/internal/resputil"
	"github.com/raids-lab/taskflow/internal/util"
	"github.com/raids-lab/taskflow/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name string
	db   *gorm.DB
}

func NewAuthMgr(conf *RegisterConfig) Manager {
	return &AuthMgr{
		name: "auth",
		db:   conf.DB,
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/signup", mgr.Signup)
	g.POST("/login", mgr.Login)
	g.POST("/refresh", mgr.Refresh)
}

func (mgr *AuthMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenResp struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	UserID       uint       `json:"userID"`
	Name         string     `json:"name"`
	Role         model.Role `json:"role"`
}

// Signup godoc
// @Summary Register a new account
// @Description New accounts start as MEMBER with status PENDING until an admin verifies them
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} resputil.Response[uint] "new user id"
// @Failure 400 {object} resputil.Response[any] "invalid request"
// @Router /v1/auth/signup [post]
func (mgr *AuthMgr) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resputil.Error(c, "failed to hash password", resputil.NotSpecified)
		return
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.RoleMember,
		Status:   model.UserPending,
	}
	if err := mgr.db.WithContext(c).Create(&user).Error; err != nil {
		resputil.Error(c, "email already registered", resputil.InvalidRequest)
		return
	}

	logutils.Log.Infof("new signup: %s (pending verification)", req.Email)
	resputil.Success(c, user.ID)
}

// Login godoc
// @Summary Exchange credentials for a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} resputil.Response[TokenResp] "token pair"
// @Failure 401 {object} resputil.Response[any] "bad credentials or unverified account"
// @Router /v1/auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}

	var user model.User
	if err := mgr.db.WithContext(c).Where("email = ?", req.Email).First(&user).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "invalid credentials", resputil.InvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "invalid credentials", resputil.InvalidCredentials)
		return
	}
	if user.Status != model.UserActive {
		resputil.HTTPError(c, http.StatusUnauthorized, "account pending verification", resputil.UserNotVerified)
		return
	}

	mgr.issueTokens(c, &user)
}

// Refresh issues a fresh token pair from a still-valid refresh token.
func (mgr *AuthMgr) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequest(c, err.Error())
		return
	}

	msg, err := util.GetTokenMgr().CheckToken(req.RefreshToken)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
		return
	}

	// Re-read so a role change or rejection invalidates old refresh tokens.
	var user model.User
	if err := mgr.db.WithContext(c).First(&user, msg.UserID).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "user not found", resputil.TokenInvalid)
		return
	}
	if user.Status != model.UserActive {
		resputil.HTTPError(c, http.StatusUnauthorized, "account is not active", resputil.UserNotVerified)
		return
	}

	mgr.issueTokens(c, &user)
}

func (mgr *AuthMgr) issueTokens(c *gin.Context, user *model.User) {
	msg := util.JWTMessage{UserID: user.ID, Username: user.Name, Role: user.Role}
	access, refresh, err := util.GetTokenMgr().CreateTokens(&msg)
	if err != nil {
		resputil.Error(c, "failed to create tokens", resputil.NotSpecified)
		return
	}
	resputil.Success(c, TokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Name:         user.Name,
		Role:         user.Role,
	})
}
