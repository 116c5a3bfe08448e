package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sportify-admin/internal/api"
	"sportify-admin/internal/model"
)

func newExercisesCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"exercise"},
		Short:   "Browse and seed the exercise catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := rt.stack.API.Exercises.List(cmd.Context(), api.ExerciseFilters{
				Page:       intFlag(cmd, "page"),
				Limit:      intFlag(cmd, "limit"),
				Search:     stringFlag(cmd, "search"),
				BodyPart:   stringFlag(cmd, "body-part"),
				Equipment:  stringFlag(cmd, "equipment"),
				Target:     stringFlag(cmd, "target"),
				Difficulty: stringFlag(cmd, "difficulty"),
			})
			if err != nil {
				return err
			}
			return printPage(rt, cmd.OutOrStdout(), page,
				[]string{"ID", "NAME", "BODY PART", "EQUIPMENT", "TARGET"},
				func(e model.Exercise) []string {
					return []string{e.ID, e.Name, e.BodyPart, e.Equipment, e.Target}
				})
		},
	}
	addPageFlags(list)
	list.Flags().String("search", "", "Search by name")
	list.Flags().String("body-part", "", "Filter by body part")
	list.Flags().String("equipment", "", "Filter by equipment")
	list.Flags().String("target", "", "Filter by target muscle")
	list.Flags().String("difficulty", "", "Filter by difficulty")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := rt.stack.API.Exercises.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), envelope.Data)
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envelope, err := rt.stack.API.Exercises.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), envelope.Data)
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Import exercises from the upstream catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envelope, err := rt.stack.API.Exercises.Seed(cmd.Context(), model.SeedExercisesOptions{
				Force: boolFlag(cmd, "force"),
				Limit: intFlag(cmd, "limit"),
			})
			if err != nil {
				return err
			}
			if envelope.Message == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Seeding started")
				return nil
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
	seed.Flags().Bool("force", false, "Reseed even if the catalog is populated")
	seed.Flags().Int("limit", 0, "Maximum number of exercises to import")

	cmd.AddCommand(list, get, stats, seed)
	return cmd
}

func newWorkoutsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workouts",
		Aliases: []string{"workout"},
		Short:   "Manage workout templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := rt.stack.API.Workouts.List(cmd.Context(), api.WorkoutFilters{
				Page:     intFlag(cmd, "page"),
				Limit:    intFlag(cmd, "limit"),
				Search:   stringFlag(cmd, "search"),
				Level:    stringFlag(cmd, "level"),
				Category: stringFlag(cmd, "category"),
			})
			if err != nil {
				return err
			}
			return printPage(rt, cmd.OutOrStdout(), page,
				[]string{"ID", "NAME", "LEVEL", "CATEGORY", "EXERCISES"},
				func(w model.Workout) []string {
					return []string{w.ID, w.Name, orDash(w.Level), orDash(w.Category), strconv.Itoa(len(w.Exercises))}
				})
		},
	}
	addPageFlags(list)
	list.Flags().String("search", "", "Search by name")
	list.Flags().String("level", "", "Filter by level")
	list.Flags().String("category", "", "Filter by category")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := rt.stack.API.Workouts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), envelope.Data)
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a workout from a JSON file",
		Long: `Create a workout from a JSON document (use -f - for stdin). Exercise
numbers may be strings or numbers; they are normalized before sending.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var payload model.WorkoutPayload
			if err := readPayload(cmd, createFile, &payload); err != nil {
				return err
			}
			envelope, err := rt.stack.API.Workouts.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "-", "Payload file")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a workout from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload model.WorkoutPayload
			if err := readPayload(cmd, updateFile, &payload); err != nil {
				return err
			}
			envelope, err := rt.stack.API.Workouts.Update(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "-", "Payload file")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rt.stack.API.Workouts.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, remove)
	return cmd
}
