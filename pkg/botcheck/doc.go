// Package botcheck verifies the bot-check token a widget sends with a
// submission.
//
// The token is opaque to the widgets. Present gates the submit button;
// a Verifier decides on the server. NewFromConfig picks the reCAPTCHA
// siteverify client when RECAPTCHA_SECRET is set and falls back to Presence,
// which only requires a non-empty token:
//
//	v := botcheck.NewFromConfig(cfg.BotCheck, botcheck.WithLogger(log))
//	if err := v.Verify(ctx, form.Token, clientip.GetIPFromContext(ctx)); err != nil {
//		// errors.Is(err, botcheck.ErrRejected), botcheck.ErrUnavailable, ...
//	}
package botcheck
