package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/finance-dashboard/infra/cloudrun"
	"github.com/GregMSThompson/finance-dashboard/infra/docker"
	"github.com/GregMSThompson/finance-dashboard/infra/firestore"
	"github.com/GregMSThompson/finance-dashboard/infra/provider"
	"github.com/GregMSThompson/finance-dashboard/infra/scheduler"
	"github.com/GregMSThompson/finance-dashboard/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firestore backs the optional insight log
		if err = firestore.SetupFirestore(ctx, prov); err != nil {
			return err
		}

		// gemini models for the assistant, forecasts and insights
		if err = vertex.SetupVertex(ctx, prov); err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		api, err := cloudrun.SetupCloudRun(ctx, prov, repo)
		if err != nil {
			return err
		}

		// daily check-all budget alert run
		if err = scheduler.SetupBudgetAlerts(ctx, prov, api.URL, api.CronKey); err != nil {
			return err
		}

		ctx.Export("apiUrl", api.URL)
		return nil
	})
}
