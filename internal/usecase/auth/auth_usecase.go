package auth

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognitoidp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/infrastructure/cognito"
)

// AuthUseCase translates Cognito calls into local result and error shapes.
// Every provider rejection surfaces as *domain.AuthError; it holds no local
// state and never issues or verifies tokens itself.
type AuthUseCase struct {
	client     cognito.API
	userPoolID string
	clientID   string
}

func NewAuthUseCase(client cognito.API, userPoolID, clientID string) *AuthUseCase {
	return &AuthUseCase{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
	}
}

// SignUp registers a new user with the user pool.
func (uc *AuthUseCase) SignUp(ctx context.Context, email, password string, name *string) (*domain.SignUpResult, error) {
	attrs := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(email)},
	}
	if name != nil && *name != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("name"), Value: name})
	}

	out, err := uc.client.SignUp(ctx, &cognitoidp.SignUpInput{
		ClientId:       aws.String(uc.clientID),
		Username:       aws.String(email),
		Password:       aws.String(password),
		UserAttributes: attrs,
	})
	if err != nil {
		var usernameExists *types.UsernameExistsException
		var invalidPassword *types.InvalidPasswordException
		switch {
		case errors.As(err, &usernameExists):
			return nil, domain.NewAuthError("User with this email already exists")
		case errors.As(err, &invalidPassword):
			return nil, domain.NewAuthError("Password does not meet requirements")
		default:
			return nil, domain.NewAuthError("Sign up failed: %s", providerMessage(err))
		}
	}

	return &domain.SignUpResult{
		UserID: aws.ToString(out.UserSub),
		Email:  email,
	}, nil
}

// ConfirmSignUp confirms a registration with the emailed code.
func (uc *AuthUseCase) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := uc.client.ConfirmSignUp(ctx, &cognitoidp.ConfirmSignUpInput{
		ClientId:         aws.String(uc.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		var codeMismatch *types.CodeMismatchException
		var expiredCode *types.ExpiredCodeException
		switch {
		case errors.As(err, &codeMismatch):
			return domain.NewAuthError("Invalid confirmation code")
		case errors.As(err, &expiredCode):
			return domain.NewAuthError("Confirmation code has expired")
		default:
			return domain.NewAuthError("Confirmation failed: %s", providerMessage(err))
		}
	}
	return nil
}

// SignIn authenticates with USER_PASSWORD_AUTH; when the app client is not
// configured for that flow the call fails with InvalidParameterException and
// we retry through the admin flow before surfacing a failure.
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password string) (*domain.Tokens, error) {
	out, err := uc.client.InitiateAuth(ctx, &cognitoidp.InitiateAuthInput{
		ClientId: aws.String(uc.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err == nil {
		return tokensFromAuthResult(out.AuthenticationResult)
	}

	var notAuthorized *types.NotAuthorizedException
	var notConfirmed *types.UserNotConfirmedException
	var invalidParam *types.InvalidParameterException
	switch {
	case errors.As(err, &notAuthorized):
		return nil, domain.NewAuthError("Invalid email or password")
	case errors.As(err, &notConfirmed):
		return nil, domain.NewAuthError("Please confirm your email before signing in")
	case errors.As(err, &invalidParam):
		return uc.adminSignIn(ctx, email, password)
	default:
		return nil, domain.NewAuthError("Sign in failed: %s", providerMessage(err))
	}
}

func (uc *AuthUseCase) adminSignIn(ctx context.Context, email, password string) (*domain.Tokens, error) {
	out, err := uc.client.AdminInitiateAuth(ctx, &cognitoidp.AdminInitiateAuthInput{
		UserPoolId: aws.String(uc.userPoolID),
		ClientId:   aws.String(uc.clientID),
		AuthFlow:   types.AuthFlowTypeAdminUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, domain.NewAuthError("Invalid email or password")
		}
		return nil, domain.NewAuthError("Sign in failed: %s", providerMessage(err))
	}
	return tokensFromAuthResult(out.AuthenticationResult)
}

// Refresh exchanges a refresh token for a new access token.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*domain.Tokens, error) {
	out, err := uc.client.InitiateAuth(ctx, &cognitoidp.InitiateAuthInput{
		ClientId: aws.String(uc.clientID),
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
	if err != nil {
		return nil, domain.NewAuthError("Token refresh failed: %s", providerMessage(err))
	}
	return tokensFromAuthResult(out.AuthenticationResult)
}

// GetUserInfo resolves an access token to the user it belongs to. This is
// the only mechanism that identifies the current user; it is a remote call
// made once per authenticated request.
func (uc *AuthUseCase) GetUserInfo(ctx context.Context, accessToken string) (*domain.UserInfo, error) {
	out, err := uc.client.GetUser(ctx, &cognitoidp.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, domain.NewAuthError("Failed to get user info: %s", providerMessage(err))
	}

	attrs := make(map[string]string, len(out.UserAttributes))
	for _, attr := range out.UserAttributes {
		attrs[aws.ToString(attr.Name)] = aws.ToString(attr.Value)
	}

	info := &domain.UserInfo{
		UserID:        aws.ToString(out.Username),
		Email:         attrs["email"],
		EmailVerified: attrs["email_verified"] == "true",
	}
	if name, ok := attrs["name"]; ok && name != "" {
		info.Name = &name
	}
	return info, nil
}

// ForgotPassword starts the password-reset flow.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	_, err := uc.client.ForgotPassword(ctx, &cognitoidp.ForgotPasswordInput{
		ClientId: aws.String(uc.clientID),
		Username: aws.String(email),
	})
	if err != nil {
		var userNotFound *types.UserNotFoundException
		if errors.As(err, &userNotFound) {
			return domain.NewAuthError("User not found")
		}
		return domain.NewAuthError("Forgot password failed: %s", providerMessage(err))
	}
	return nil
}

// ConfirmForgotPassword completes the password-reset flow.
func (uc *AuthUseCase) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := uc.client.ConfirmForgotPassword(ctx, &cognitoidp.ConfirmForgotPasswordInput{
		ClientId:         aws.String(uc.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	if err != nil {
		var codeMismatch *types.CodeMismatchException
		var expiredCode *types.ExpiredCodeException
		switch {
		case errors.As(err, &codeMismatch):
			return domain.NewAuthError("Invalid confirmation code")
		case errors.As(err, &expiredCode):
			return domain.NewAuthError("Confirmation code has expired")
		default:
			return domain.NewAuthError("Password reset failed: %s", providerMessage(err))
		}
	}
	return nil
}

// SignOut revokes every token issued for the access token's session.
func (uc *AuthUseCase) SignOut(ctx context.Context, accessToken string) error {
	_, err := uc.client.GlobalSignOut(ctx, &cognitoidp.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return domain.NewAuthError("Sign out failed: %s", providerMessage(err))
	}
	return nil
}

func tokensFromAuthResult(result *types.AuthenticationResultType) (*domain.Tokens, error) {
	if result == nil {
		return nil, domain.NewAuthError("Sign in failed: no authentication result returned")
	}
	return &domain.Tokens{
		AccessToken:  aws.ToString(result.AccessToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		TokenType:    "Bearer",
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// providerMessage pulls the human-readable message out of a Cognito error.
func providerMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}
