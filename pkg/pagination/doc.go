// Package pagination provides offset-based iteration over the Refyne jobs
// listing.
//
// The jobs endpoint returns pages of at most `limit` entries and carries no
// total count, so the pager walks offsets sequentially until a short page
// signals the end.
//
// Example usage:
//
//	pager := pagination.NewPager(refyneClient, pagination.DefaultConfig())
//	jobs, err := pager.All(ctx)
//
// For large accounts, Each avoids holding every job in memory:
//
//	err := pager.Each(ctx, func(job client.Job) error {
//		fmt.Println(job.ID, job.Status)
//		return nil
//	})
package pagination
