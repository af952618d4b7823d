package apiserver

import "github.com/trackmaster/trackmaster/pkg/validate"

const (
	invalidEmail    = "Please enter a valid email."
	invalidPassword = "Password has to be atleast 8 alphanumeric characters"
	minPasswordLen  = 8
)

var (
	signupRules = []*validate.Chain{
		validate.Field("email").Required().Email().NormalizeEmail().WithMessage(invalidEmail),
		validate.Field("password").MinLength(minPasswordLen).WithMessage(invalidPassword),
	}

	loginRules = []*validate.Chain{
		validate.Field("email").Required().NormalizeEmail().WithMessage(invalidEmail),
		validate.Field("password").MinLength(minPasswordLen).WithMessage(invalidPassword),
	}

	updateUserRules = []*validate.Chain{
		validate.Field("email").Required().Email().NormalizeEmail().WithMessage(invalidEmail),
		validate.Field("password").MinLength(minPasswordLen).WithMessage(invalidPassword),
		validate.Field("currentPassword").Required().WithMessage("Please enter your current password."),
	}

	domainRules = []*validate.Chain{
		validate.Field("domainName").Trim().NotEmpty(),
		validate.Field("url").Trim().NotEmpty(),
		validate.Field("owner").Trim().NotEmpty(),
	}

	deviceRules = []*validate.Chain{
		validate.Field("ip").Trim().NotEmpty(),
		validate.Field("name").Trim().NotEmpty(),
		validate.Field("userAgent").Trim().NotEmpty(),
		validate.Field("details").Trim().NotEmpty(),
		validate.Field("detailsIpInfo").Trim().NotEmpty(),
		validate.Field("createdAt").Optional().Trim().Numeric(),
	}

	detailRules = []*validate.Chain{
		validate.Field("ip").Trim().NotEmpty(),
		validate.Field("brand").Trim().NotEmpty(),
		validate.Field("host").Trim().NotEmpty(),
		validate.Field("createdAt").Optional().Trim().Numeric(),
	}

	dataRules = []*validate.Chain{
		validate.Field("owner").Trim().NotEmpty(),
		validate.Field("archive").Optional().Trim().Numeric(),
		validate.Field("latlng").Optional().Object(),
	}
)
