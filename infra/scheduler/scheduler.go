package scheduler

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudscheduler"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const budgetAlertsPath = "/notifications/budget-alerts?checkAll=true"

// SetupBudgetAlerts schedules the check-all budget alert run against the
// deployed API, authenticated with the cron key header.
func SetupBudgetAlerts(ctx *pulumi.Context, prov *gcp.Provider, apiURL, cronKey pulumi.StringOutput) error {
	gcpCfg := config.New(ctx, "gcp")
	appCfg := config.New(ctx, "app")
	region := gcpCfg.Require("region")

	schedule := appCfg.Get("alertSchedule")
	if schedule == "" {
		schedule = "0 9 * * *"
	}

	srv, err := projects.NewService(ctx, "cloudSchedulerService", &projects.ServiceArgs{
		Service: pulumi.String("cloudscheduler.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return err
	}

	_, err = cloudscheduler.NewJob(ctx, "budgetAlertsJob", &cloudscheduler.JobArgs{
		Region:   pulumi.String(region),
		Schedule: pulumi.String(schedule),
		TimeZone: pulumi.String("America/Sao_Paulo"),
		HttpTarget: &cloudscheduler.JobHttpTargetArgs{
			HttpMethod: pulumi.String("GET"),
			Uri: apiURL.ApplyT(func(u string) string {
				return u + budgetAlertsPath
			}).(pulumi.StringOutput),
			Headers: pulumi.StringMap{
				"X-Cron-Key": cronKey,
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{srv}),
	)
	return err
}
