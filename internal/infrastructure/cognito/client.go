package cognito

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognitoidp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// API is the slice of the Cognito Identity Provider surface the backend
// calls. Declared here so use cases and tests can substitute a fake.
type API interface {
	SignUp(ctx context.Context, params *cognitoidp.SignUpInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidp.ConfirmSignUpInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.ConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidp.InitiateAuthInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.InitiateAuthOutput, error)
	AdminInitiateAuth(ctx context.Context, params *cognitoidp.AdminInitiateAuthInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.AdminInitiateAuthOutput, error)
	GetUser(ctx context.Context, params *cognitoidp.GetUserInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.GetUserOutput, error)
	ForgotPassword(ctx context.Context, params *cognitoidp.ForgotPasswordInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *cognitoidp.ConfirmForgotPasswordInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.ConfirmForgotPasswordOutput, error)
	GlobalSignOut(ctx context.Context, params *cognitoidp.GlobalSignOutInput, optFns ...func(*cognitoidp.Options)) (*cognitoidp.GlobalSignOutOutput, error)
}

// NewClient builds a Cognito IdP client for the given region using the
// default AWS credential chain.
func NewClient(ctx context.Context, region string) (*cognitoidp.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cognitoidp.NewFromConfig(cfg), nil
}
