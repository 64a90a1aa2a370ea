// Package googleai provides AI service implementations backed by Google's
// Gemini models.
//
// It implements ai.AIProvider on top of langchaingo's googleai client. The
// generator sends the assembled recommendation prompt as a single prompt and
// returns the model output untouched.
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
//	provider, err := googleai.NewProvider(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
package googleai
