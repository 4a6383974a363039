// Package repurpose turns a single blog post into derivative content: key
// points, a short summary, platform-specific social media posts, and an email
// newsletter.
//
// The package provides two alternative ways of producing the same
// [WorkflowResult]:
//
//   - workflow.Pipeline: a deterministic extract -> summarize -> social ->
//     newsletter sequence, with each generation step wrapped in a bounded
//     reflexion (generate -> evaluate -> improve) loop.
//   - agent.Loop: a model-driven loop in which the model itself picks which
//     transformation tool to invoke each turn, terminated by an explicit
//     "finish" tool call or an iteration ceiling.
//
// workflow.Comparison runs both and scores their outputs side by side.
//
// This root package holds the shared surface: the [BlogPost] input, the
// [Gateway] boundary to the completion service, the tool-schema table (the
// wire contract with the model), the [Config] for constructing gateways, and
// the hook registry used for observability. Behavior lives in the
// subpackages (tools, reflexion, agent, workflow, models, loggers).
//
// Quick start:
//
//	cfg := repurpose.ConfigFromEnv()
//	gw, err := models.NewOpenAI(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	post, err := repurpose.LoadBlogPost("sample_blog_post.json")
//	if err != nil {
//	    log.Fatal(err) // unreadable sample data is fatal, unlike gateway errors
//	}
//
//	result := workflow.NewPipeline(gw).Run(context.Background(), post)
//	fmt.Println(result.Summary)
//
// All gateway calls are blocking and strictly sequential; the only
// cancellation mechanism besides the caller's context are the hard attempt
// and iteration ceilings.
package repurpose
