package android

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/thoreinstein/tns/internal/errors"
	"github.com/thoreinstein/tns/internal/toolchain"
)

// Validation errors.
var (
	// ErrInvalidPackageName is returned for an ID that is not a valid
	// Java package name.
	ErrInvalidPackageName = errors.New("Package name must look like: com.company.Name")

	// ErrReservedWord is returned when the ID contains a Java keyword
	// segment.
	ErrReservedWord = errors.New("class is a reserved word")

	// ErrInvalidProjectName is returned for names Java cannot use as a
	// class name.
	ErrInvalidProjectName = errors.New("invalid project name")

	// ErrToolchain is returned when a required SDK tool is missing or
	// broken.
	ErrToolchain = errors.New("android toolchain unavailable")
)

var (
	packageNamePattern  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)
	reservedWordPattern = regexp.MustCompile(`\b[Cc]lass\b`)
)

// ValidatePackageName checks id against the Java package grammar.
func ValidatePackageName(id string) error {
	if !packageNamePattern.MatchString(id) {
		return ErrInvalidPackageName
	}
	if reservedWordPattern.MatchString(id) {
		return ErrReservedWord
	}
	return nil
}

// ValidateProjectName checks that name can become a Java class name.
func ValidateProjectName(name string) error {
	if name == "" {
		return errors.Mark(errors.New("Project name cannot be empty"), ErrInvalidProjectName)
	}
	if name[0] >= '0' && name[0] <= '9' {
		return errors.Mark(errors.New("Project name must not begin with a number"), ErrInvalidProjectName)
	}
	return nil
}

// Validate implements platform.ProjectService. Static checks run before
// any tool is probed.
func (s *Service) Validate(ctx context.Context) error {
	if err := ValidatePackageName(s.project.ID); err != nil {
		return err
	}
	if err := ValidateProjectName(s.project.Name); err != nil {
		return err
	}
	return s.ValidateToolchain(ctx)
}

// ValidateToolchain probes ant, java and the android SDK tool in that
// order without looking at the project.
func (s *Service) ValidateToolchain(ctx context.Context) error {
	if err := s.checkAnt(ctx); err != nil {
		return err
	}
	if err := s.checkJava(ctx); err != nil {
		return err
	}
	_, err := s.listTargets(ctx)
	return err
}

func (s *Service) checkAnt(ctx context.Context) error {
	res, err := s.runner.Output(ctx, "ant", "-version")
	if err != nil || res.ExitCode != 0 {
		return toolchainError("Error executing commands 'ant', make sure you have ant installed and added to your PATH.")
	}
	return nil
}

func (s *Service) checkJava(ctx context.Context) error {
	res, err := s.runner.Output(ctx, "java", "-version")
	if err != nil || res.ExitCode != 0 {
		msg := "Failed to run 'java', make sure your java environment is set up, including JDK and JRE. " +
			"Your JAVA_HOME variable is " + os.Getenv("JAVA_HOME")
		if err != nil {
			return errors.WithDetail(toolchainError(msg), err.Error())
		}
		return errors.WithDetail(toolchainError(msg), strings.TrimSpace(res.Combined()))
	}
	return nil
}

// listTargets runs "android list targets" and returns its output.
func (s *Service) listTargets(ctx context.Context) (string, error) {
	res, err := s.runner.Output(ctx, "android", "list", "targets")
	if err != nil {
		if errors.Is(err, toolchain.ErrToolNotFound) {
			return "", toolchainError(
				`The command "android" failed. Make sure you have the latest Android SDK installed, `+
					`and the "android" command (inside the tools/ folder) is added to your path.`)
		}
		return "", toolchainError("An error occurred while listing Android targets")
	}
	if res.ExitCode != 0 {
		return "", errors.WithDetail(
			toolchainError("An error occurred while listing Android targets"),
			strings.TrimSpace(res.Stderr),
		)
	}
	return res.Stdout, nil
}

func toolchainError(msg string) error {
	return errors.Mark(errors.New(msg), ErrToolchain)
}
