/*
Package phonesdk is a Go client for the phoneauth login service.

A login is three calls on a Client. The client keeps the CSRF cookie in its
cookie jar and fetches a token on first use:

	client := phonesdk.NewClient("https://login.example.com")

	check, err := client.CheckPhone(ctx, "98765 43210")
	// check.RequireEmail, check.OnboardingTiming tell you what to collect

	sent, err := client.SendOTP(ctx, phonesdk.SendOTPRequest{Phone: check.Phone})

	session, err := client.VerifyOTP(ctx, phonesdk.VerifyOTPRequest{
		Phone: check.Phone,
		OTP:   code,
		After: &phonesdk.Onboarding{Email: "asha@example.com"},
	})

The returned Session carries the bearer token and can read the profile:

	me, err := session.Me(ctx)

Operator endpoints take the static admin token:

	admin := client.Admin(adminToken)
	profile, err := admin.GetUser(ctx, userID)

Error replies are returned as *APIError. Use Code to branch on them:

	if phonesdk.Code(err) == phonesdk.ErrorCodeRateLimited {
		// wait before asking for another code
	}
*/
package phonesdk
