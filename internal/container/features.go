package container

// Features maps a resolved context to the devcontainer features to install.
// Rules are applied in order; entries merged from environment manifests are
// keyed by feature id, last writer wins.
func (r *Resolver) Features(ctx *Context) map[string]interface{} {
	features := make(map[string]interface{})

	switch {
	case ctx.HasEngine("knitr"):
		rSupport := "none"
		if ctx.CodeEnvironment == VSCode {
			rSupport = "full"
		}
		features[featureRRig] = map[string]interface{}{
			"vscodeRSupport":   rSupport,
			"installJupyter":   ctx.HasEngine("jupyter"),
			"installRenv":      true,
			"installRMarkdown": true,
		}
	case ctx.HasEngine("jupyter"):
		features[featurePython] = map[string]interface{}{
			"installJupyterlab": ctx.CodeEnvironment == JupyterLab,
		}
	}

	features[featureQuarto] = map[string]interface{}{
		"version":         string(ctx.Quarto),
		"installTinyTex":  ctx.HasTool(ToolTinyTeX),
		"installChromium": ctx.HasTool(ToolChromium),
	}

	for _, file := range ctx.Environments {
		for _, env := range r.reg.Environments {
			if env.File != file {
				continue
			}
			for id, params := range env.Features {
				features[id] = params
			}
		}
	}

	return features
}

// Image returns the base container image for the context's code environment.
func (r *Resolver) Image(ctx *Context) string {
	return r.reg.Images[ctx.CodeEnvironment]
}
