package vertex

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupVertex enables Vertex AI unless the stack runs with another
// text generator (app:aiProvider).
func SetupVertex(ctx *pulumi.Context, prov *gcp.Provider) error {
	if p := config.New(ctx, "app").Get("aiProvider"); p != "" && p != "vertex" {
		return nil
	}
	_, err := projects.NewService(ctx, "vertexService", &projects.ServiceArgs{
		Service:          pulumi.String("aiplatform.googleapis.com"),
		DisableOnDestroy: pulumi.Bool(false),
	},
		pulumi.Provider(prov),
	)
	return err
}
