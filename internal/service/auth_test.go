package service_test // 测试包

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/necriesa/puso-t-tulong/internal/domain"
	"github.com/necriesa/puso-t-tulong/internal/repository"
	"github.com/necriesa/puso-t-tulong/internal/repository/mocks"
	"github.com/necriesa/puso-t-tulong/internal/service"
)

// --- 测试 Register 方法 ---

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService, err := service.NewAuthService(mockUserRepo, "very-secret-key", 1)
	require.NoError(t, err, "创建 AuthService 不应失败")

	ctx := context.Background()
	password := "pass1234"
	input := service.RegisterInput{
		Username: "alice",
		Password: password,
		Email:    "a@x.com",
		Age:      30,
		Birthday: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	// 设置 Mock 预期: Save 被调用时模拟保存成功并回填 ID/时间戳
	mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
		assert.Equal(t, input.Username, user.Username)
		assert.Equal(t, input.Email, user.Email)
		assert.Equal(t, input.Age, user.Age)
		// 存储的绝不能是提交的明文
		assert.NotEqual(t, password, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)), "密码应被正确哈希")
		return true
	})).
		Run(func(args mock.Arguments) { // 模拟数据库填充字段
			userArg := args.Get(1).(*domain.User)
			userArg.ID = 5
			userArg.CreatedAt = time.Now().Add(-time.Second)
		}).
		Return(nil).
		Once()

	// Act
	registeredUser, err := authService.Register(ctx, input)

	// Assert
	assert.NoError(t, err, "成功注册时不应有错误")
	require.NotNil(t, registeredUser, "成功注册时应返回用户对象")
	assert.Equal(t, uint(5), registeredUser.ID)
	assert.Equal(t, input.Username, registeredUser.Username)
	assert.Empty(t, registeredUser.Password, "返回的用户密码应为空")
	assert.False(t, registeredUser.CreatedAt.IsZero(), "创建时间应被设置")

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	// Arrange: 并发竞争下 Save 撞上唯一索引
	mockUserRepo := new(mocks.UserRepository)
	authService, _ := service.NewAuthService(mockUserRepo, "secret", 1)
	ctx := context.Background()

	mockUserRepo.On("Save", ctx, mock.AnythingOfType("*domain.User")).
		Return(repository.ErrDuplicateEntry).Once()

	// Act
	_, err := authService.Register(ctx, service.RegisterInput{
		Username: "existingUser",
		Password: "password",
		Email:    "email@test.com",
	})

	// Assert
	require.Error(t, err, "用户名已存在时应返回错误")
	assert.True(t, errors.Is(err, service.ErrRegistrationFailed), "错误类型应为 ErrRegistrationFailed")

	mockUserRepo.AssertExpectations(t)
}

// --- 测试 Login 方法 ---

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService, _ := service.NewAuthService(mockUserRepo, "test-secret", 24)
	ctx := context.Background()
	username := "testuser"
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userInDb := &domain.User{ID: 1, Username: username, Password: string(hashedPassword)}

	mockUserRepo.On("FindByUsername", ctx, username).Return(userInDb, nil).Once()

	// Act
	token, err := authService.Login(ctx, username, password)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_NoUserEnumeration(t *testing.T) {
	// “用户不存在”和“密码错误”对调用方必须不可区分
	ctx := context.Background()
	username := "testuser"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)

	// Arrange: 用户不存在
	mockRepoA := new(mocks.UserRepository)
	serviceA, _ := service.NewAuthService(mockRepoA, "test-secret", 24)
	mockRepoA.On("FindByUsername", ctx, "nonexistent").Return(nil, repository.ErrUserNotFound).Once()

	// Arrange: 用户存在但密码错误
	mockRepoB := new(mocks.UserRepository)
	serviceB, _ := service.NewAuthService(mockRepoB, "test-secret", 24)
	mockRepoB.On("FindByUsername", ctx, username).
		Return(&domain.User{ID: 1, Username: username, Password: string(hashedPassword)}, nil).Once()

	// Act
	tokenA, errA := serviceA.Login(ctx, "nonexistent", "whatever")
	tokenB, errB := serviceB.Login(ctx, username, "wrongpassword")

	// Assert: 两条失败路径返回完全相同的可观测结果
	require.Error(t, errA)
	require.Error(t, errB)
	assert.Equal(t, errA, errB)
	assert.True(t, errors.Is(errA, service.ErrAuthenticationFailed))
	assert.Empty(t, tokenA)
	assert.Empty(t, tokenB)

	mockRepoA.AssertExpectations(t)
	mockRepoB.AssertExpectations(t)
}

// --- 测试 UsernameTaken 方法 ---

func TestAuthService_UsernameTaken(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService, _ := service.NewAuthService(mockUserRepo, "secret", 1)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "taken").
		Return(&domain.User{ID: 2, Username: "taken"}, nil).Once()
	mockUserRepo.On("FindByUsername", ctx, "free").
		Return(nil, repository.ErrUserNotFound).Once()

	taken, err := authService.UsernameTaken(ctx, "taken")
	assert.NoError(t, err)
	assert.True(t, taken)

	taken, err = authService.UsernameTaken(ctx, "free")
	assert.NoError(t, err)
	assert.False(t, taken)

	mockUserRepo.AssertExpectations(t)
}
