package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edushare/backend/internal/app/models"
	"github.com/edushare/backend/internal/app/models/dto"
	"github.com/edushare/backend/internal/app/repositories"
	"github.com/edushare/backend/internal/pkg/apperrors"
	pkgauth "github.com/edushare/backend/internal/pkg/auth"
)

// --- fakes ---

type fakeUserRepo struct {
	usersByEmail map[string]*models.User
	usersByID    map[int64]*models.User
	usernames    map[string]bool
	created      []*models.User
	nextID       int64
	createErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: map[string]*models.User{},
		usersByID:    map[int64]*models.User{},
		usernames:    map[string]bool{},
		nextID:       1,
	}
}

func (f *fakeUserRepo) add(u *models.User) {
	f.usersByEmail[u.Email] = u
	f.usersByID[u.ID] = u
	f.usernames[u.Username] = true
}

func (f *fakeUserRepo) Create(ctx context.Context, tx pgx.Tx, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return f.usernames[username], nil
}

type fakeOTPRepo struct {
	codes      map[string]string
	supersedes []string
	deleted    []string
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: map[string]string{}}
}

func (f *fakeOTPRepo) Supersede(ctx context.Context, email, code string) error {
	f.codes[email] = code
	f.supersedes = append(f.supersedes, email)
	return nil
}

func (f *fakeOTPRepo) Exists(ctx context.Context, email, code string) (bool, error) {
	stored, ok := f.codes[email]
	return ok && stored == code, nil
}

func (f *fakeOTPRepo) DeleteByEmail(ctx context.Context, tx pgx.Tx, email string) error {
	delete(f.codes, email)
	f.deleted = append(f.deleted, email)
	return nil
}

type fakeResourceRepo struct {
	listOut   []*repositories.ResourceDetails
	byUls     map[int64][]*models.Resource
	created   []*models.Resource
	nextID    int64
	createErr error
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{byUls: map[int64][]*models.Resource{}, nextID: 1}
}

func (f *fakeResourceRepo) Create(ctx context.Context, resource *models.Resource) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.created = append(f.created, resource)
	return id, nil
}

func (f *fakeResourceRepo) ListNewestFirst(ctx context.Context) ([]*repositories.ResourceDetails, error) {
	return f.listOut, nil
}

func (f *fakeResourceRepo) ListByUploader(ctx context.Context, uploaderID int64) ([]*models.Resource, error) {
	return f.byUls[uploaderID], nil
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id int64) (*repositories.ResourceDetails, error) {
	for _, d := range f.listOut {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

type fakeMailer struct {
	sent    []string
	lastTo  string
	sendErr error
}

func (f *fakeMailer) SendOTPEmail(toEmail, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.lastTo = toEmail
	f.sent = append(f.sent, code)
	return nil
}

// --- helpers ---

func noopTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func newTestJWTService() *pkgauth.JWTService {
	return pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  time.Hour,
		TicketExp:   15 * time.Minute,
		TokenIssuer: "test",
	})
}

type authFixture struct {
	users   *fakeUserRepo
	otps    *fakeOTPRepo
	res     *fakeResourceRepo
	mailer  *fakeMailer
	jwt     *pkgauth.JWTService
	service AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:  newFakeUserRepo(),
		otps:   newFakeOTPRepo(),
		res:    newFakeResourceRepo(),
		mailer: &fakeMailer{},
		jwt:    newTestJWTService(),
	}
	f.service = NewAuthService(
		f.users, f.otps, f.res, f.mailer, f.jwt,
		[]string{".edu.bd", ".ac.bd", ".edu"},
		noopTx, zerolog.Nop(),
	)
	return f
}

func registeredUser(f *authFixture, email, username, password string) *models.User {
	hashed, _ := pkgauth.HashPassword(password)
	u := &models.User{
		ID:       f.users.nextID,
		Username: username,
		Email:    email,
		Password: hashed,
		FullName: "Existing User",
	}
	f.users.nextID++
	f.users.add(u)
	return u
}

// --- SendOTP ---

func TestSendOTP_RejectsNonInstitutionalDomain(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.SendOTP(context.Background(), "someone@gmail.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmailDomainNotAllowed)
	assert.Empty(t, f.mailer.sent)
}

func TestSendOTP_AcceptsSuffixMatch(t *testing.T) {
	f := newAuthFixture(t)

	// ".edu" is a suffix of the whole address, not a registered domain part
	err := f.service.SendOTP(context.Background(), "a@student.edu")

	require.NoError(t, err)
	assert.Equal(t, "a@student.edu", f.mailer.lastTo)
	assert.Len(t, f.mailer.sent, 1)
	assert.Len(t, f.mailer.sent[0], 6)
}

func TestSendOTP_RejectsRegisteredEmail(t *testing.T) {
	f := newAuthFixture(t)
	registeredUser(f, "taken@uni.edu.bd", "taken", "password1")

	err := f.service.SendOTP(context.Background(), "taken@uni.edu.bd")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestSendOTP_SupersedesPreviousCode(t *testing.T) {
	f := newAuthFixture(t)
	email := "a@uni.edu.bd"

	require.NoError(t, f.service.SendOTP(context.Background(), email))
	require.NoError(t, f.service.SendOTP(context.Background(), email))

	assert.Len(t, f.otps.supersedes, 2)

	// only the latest stored code verifies
	ok, err := f.otps.Exists(context.Background(), email, f.otps.codes[email])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSendOTP_MailFailureDoesNotFail(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.sendErr = errors.New("smtp unreachable")

	err := f.service.SendOTP(context.Background(), "a@uni.edu.bd")

	require.NoError(t, err)
	assert.NotEmpty(t, f.otps.codes["a@uni.edu.bd"])
}

// --- VerifyOTP ---

func TestVerifyOTP_WrongCode(t *testing.T) {
	f := newAuthFixture(t)
	email := "a@uni.edu.bd"
	require.NoError(t, f.service.SendOTP(context.Background(), email))

	_, err := f.service.VerifyOTP(context.Background(), email, "000000")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrOTPMismatch)
}

func TestVerifyOTP_ReturnsTicketWithoutConsumingCode(t *testing.T) {
	f := newAuthFixture(t)
	email := "a@uni.edu.bd"
	require.NoError(t, f.service.SendOTP(context.Background(), email))
	code := f.otps.codes[email]

	ticket, err := f.service.VerifyOTP(context.Background(), email, code)
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	claims, err := f.jwt.ValidateToken(ticket, pkgauth.PurposeRegistration)
	require.NoError(t, err)
	assert.Equal(t, email, claims.Email)

	// verifying again still works, the code is only consumed at registration
	_, err = f.service.VerifyOTP(context.Background(), email, code)
	require.NoError(t, err)
	assert.Equal(t, code, f.otps.codes[email])
}

func TestVerifyOTP_TicketRejectedAsSession(t *testing.T) {
	f := newAuthFixture(t)
	email := "a@uni.edu.bd"
	require.NoError(t, f.service.SendOTP(context.Background(), email))

	ticket, err := f.service.VerifyOTP(context.Background(), email, f.otps.codes[email])
	require.NoError(t, err)

	_, err = f.jwt.ValidateToken(ticket, pkgauth.PurposeSession)
	assert.Error(t, err)
}

// --- Register ---

func registerRequest(f *authFixture, t *testing.T, email string) *dto.RegisterRequest {
	t.Helper()
	require.NoError(t, f.service.SendOTP(context.Background(), email))
	ticket, err := f.service.VerifyOTP(context.Background(), email, f.otps.codes[email])
	require.NoError(t, err)

	return &dto.RegisterRequest{
		Ticket:     ticket,
		FullName:   "New Student",
		Username:   "new_student",
		Email:      email,
		Password:   "password1",
		University: "Example University",
		Department: "CSE",
		Batch:      "2026",
	}
}

func TestRegister_CreatesUserAndClearsOTP(t *testing.T) {
	f := newAuthFixture(t)
	email := "new@uni.edu.bd"
	req := registerRequest(f, t, email)

	user, err := f.service.Register(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, email, user.Email)
	assert.NotEqual(t, "password1", user.Password)
	assert.True(t, pkgauth.CheckPassword(user.Password, "password1"))
	assert.Contains(t, f.otps.deleted, email)
	assert.Empty(t, f.otps.codes[email])
}

func TestRegister_RejectsMissingTicket(t *testing.T) {
	f := newAuthFixture(t)
	req := registerRequest(f, t, "new@uni.edu.bd")
	req.Ticket = ""

	_, err := f.service.Register(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTicket)
	assert.Empty(t, f.users.created)
}

func TestRegister_RejectsTicketForDifferentEmail(t *testing.T) {
	f := newAuthFixture(t)
	req := registerRequest(f, t, "new@uni.edu.bd")
	req.Email = "other@uni.edu.bd"

	_, err := f.service.Register(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTicket)
}

func TestRegister_RejectsSessionTokenAsTicket(t *testing.T) {
	f := newAuthFixture(t)
	req := registerRequest(f, t, "new@uni.edu.bd")

	sessionToken, _, err := f.jwt.GenerateSessionToken(42, "new@uni.edu.bd")
	require.NoError(t, err)
	req.Ticket = sessionToken

	_, err = f.service.Register(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTicket)
}

func TestRegister_RejectsTakenUsername(t *testing.T) {
	f := newAuthFixture(t)
	registeredUser(f, "old@uni.edu.bd", "new_student", "password1")
	req := registerRequest(f, t, "new@uni.edu.bd")

	_, err := f.service.Register(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	f := newAuthFixture(t)
	req := registerRequest(f, t, "new@uni.edu.bd")
	req.Password = "onlyletters"

	_, err := f.service.Register(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	registeredUser(f, "user@uni.edu.bd", "user_one", "password1")

	session, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@uni.edu.bd",
		Password: "password1",
	})

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Token)
	assert.Greater(t, session.ExpiresAt, time.Now().Unix())

	claims, err := f.jwt.ValidateToken(session.Token, pkgauth.PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	f := newAuthFixture(t)
	registeredUser(f, "user@uni.edu.bd", "user_one", "password1")

	_, errWrongPass := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@uni.edu.bd",
		Password: "wrongpass1",
	})
	_, errNoUser := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@uni.edu.bd",
		Password: "password1",
	})

	require.Error(t, errWrongPass)
	require.Error(t, errNoUser)
	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, apperrors.ErrInvalidCredentials)
}

// --- GetProfile ---

func TestGetProfile_ReturnsUserAndUploads(t *testing.T) {
	f := newAuthFixture(t)
	u := registeredUser(f, "user@uni.edu.bd", "user_one", "password1")
	f.res.byUls[u.ID] = []*models.Resource{
		{ID: 7, Title: "Algorithms Notes", UploaderID: u.ID},
	}

	profile, err := f.service.GetProfile(context.Background(), u.ID)

	require.NoError(t, err)
	assert.Equal(t, u.Email, profile.User.Email)
	require.Len(t, profile.Uploads, 1)
	assert.Equal(t, int64(7), profile.Uploads[0].ID)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.GetProfile(context.Background(), 999)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
